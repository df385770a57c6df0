package hashid

import (
	"errors"

	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/speps/go-hashids"
)

// ID types recognized on the public surface
const (
	FolderID = iota // folder
	AttachmentID    // attachment
	UserID          // user
)

var (
	// ErrTypeNotMatch ID type mismatch
	ErrTypeNotMatch = errors.New("mismatched ID type")
)

// HashEncode encodes the given data into a hashid
func HashEncode(v []int) (string, error) {
	hd := hashids.NewData()
	hd.Salt = conf.SystemConfig.HashIDSalt

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return "", err
	}

	id, err := h.Encode(v)
	if err != nil {
		return "", err
	}
	return id, nil
}

// HashDecode decodes a hashid back into its raw data
func HashDecode(raw string) ([]int, error) {
	hd := hashids.NewData()
	hd.Salt = conf.SystemConfig.HashIDSalt

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return []int{}, err
	}

	return h.DecodeWithError(raw)
}

// HashID encodes a database primary key with its type
func HashID(id uint, t int) string {
	v, _ := HashEncode([]int{int(id), t})
	return v
}

// DecodeHashID decodes a public id, verifying its type
func DecodeHashID(id string, t int) (uint, error) {
	v, _ := HashDecode(id)
	if len(v) != 2 || v[1] != t {
		return 0, ErrTypeNotMatch
	}
	return uint(v[0]), nil
}

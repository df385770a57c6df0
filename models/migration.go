package model

import (
	"io/ioutil"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/jinzhu/gorm"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/util"
)

// needMigration checks version.lock to decide whether the automatic
// migration should run. Debug mode always migrates.
func needMigration() bool {
	if conf.SystemConfig.Debug {
		return true
	}
	if !util.Exists("version.lock") {
		return true
	}

	locked, err := ioutil.ReadFile("version.lock")
	if err != nil {
		return true
	}
	lockedVersion, err := version.NewVersion(strings.TrimSpace(string(locked)))
	if err != nil {
		return true
	}
	current := version.Must(version.NewVersion(conf.RequiredDBVersion))
	return !lockedVersion.Equal(current)
}

// migration runs the automatic schema migration and seeds the required
// initial records
func migration() {
	if !needMigration() {
		util.Log().Info("Backend version matches version.lock, skipping migration.")
		return
	}

	util.Log().Info("Start initializing database schema...")

	if conf.DatabaseConfig.Type == "mysql" {
		DB = DB.Set("gorm:table_options", "ENGINE=InnoDB")
	}
	DB.AutoMigrate(&Folder{}, &AttachmentFolder{}, &Attachment{}, &User{})

	addDefaultFolder()
	addDefaultUser()

	if err := ioutil.WriteFile("version.lock", []byte(conf.RequiredDBVersion), 0644); err != nil {
		util.Log().Warning("Failed to write version.lock: %s", err)
	}

	util.Log().Info("Finished database migration.")
}

// addDefaultFolder seeds the reserved Unassigned folder
func addDefaultFolder() {
	if _, err := GetOrCreateUnassigned(); err != nil {
		util.Log().Panic("Failed to create the default folder: %s", err)
	}
}

// addDefaultUser seeds the initial manager account
func addDefaultUser() {
	_, err := GetUserByID(1)
	if gorm.IsRecordNotFoundError(err) {
		defaultUser := NewUser()
		defaultUser.Email = "admin@mediashelf.org"
		defaultUser.Nick = "admin"
		defaultUser.ManageUploads = true
		password := util.RandStringRunes(12)
		if err := defaultUser.SetPassword(password); err != nil {
			util.Log().Panic("Failed to create initial password: %s", err)
		}
		if err := DB.Create(&defaultUser).Error; err != nil {
			util.Log().Panic("Failed to create initial user: %s", err)
		}
		util.Log().Info("Initial manager account: admin@mediashelf.org, password: %s", password)
	}
}

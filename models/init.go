package model

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/mediashelf/mediashelf/pkg/conf"
	"github.com/mediashelf/mediashelf/pkg/util"

	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// DB database connection singleton
var DB *gorm.DB

// Init initializes the database connection
func Init() {
	util.Log().Info("Initializing database connection...")

	var (
		db  *gorm.DB
		err error
	)

	switch conf.DatabaseConfig.Type {
	case "UNSET", "sqlite", "sqlite3":
		db, err = gorm.Open("sqlite3", conf.DatabaseConfig.DBFile)
	case "mysql":
		db, err = gorm.Open("mysql", fmt.Sprintf(
			"%s:%s@(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			conf.DatabaseConfig.User,
			conf.DatabaseConfig.Password,
			conf.DatabaseConfig.Host,
			conf.DatabaseConfig.Port,
			conf.DatabaseConfig.Name,
			conf.DatabaseConfig.Charset,
		))
	default:
		util.Log().Panic("Unsupported database type %q.", conf.DatabaseConfig.Type)
	}

	if err != nil {
		util.Log().Panic("Failed to connect to database: %s", err)
	}

	// Table name prefix
	if conf.DatabaseConfig.TablePrefix != "" {
		gorm.DefaultTableNameHandler = func(db *gorm.DB, defaultTableName string) string {
			return conf.DatabaseConfig.TablePrefix + defaultTableName
		}
	}

	db.LogMode(conf.SystemConfig.Debug)

	db.DB().SetMaxIdleConns(50)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Second * 30)

	DB = db

	migration()
}

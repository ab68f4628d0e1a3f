package db

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shamtool/internal/shared/logs"
	"shamtool/internal/shared/serverconfig"
)

const defaultSlowThreshold = 200 * time.Millisecond

func gormConfig(slow time.Duration) *gorm.Config {
	if slow <= 0 {
		slow = defaultSlowThreshold
	}
	return &gorm.Config{
		Logger: logs.NewGormLogger(logger.Warn, slow),
	}
}

// Open connects to MySQL. The pool defaults to one connection.
func Open(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	// username:password@protocol(address)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		port,
		cfg.DBName,
		charset,
	)
	db, err := gorm.Open(mysql.Open(dsn), gormConfig(cfg.SlowThreshold))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(max(1, cfg.MaxConn))
	sqlDB.SetMaxIdleConns(max(1, cfg.MaxIdle))

	logs.Info("open db success",
		zap.String("host", cfg.Host),
		zap.Int("port", port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}

// OpenConn wraps an already open connection with the MySQL dialect. Tests use
// it to run the same code on an in-memory sqlite database.
func OpenConn(conn *sql.DB, slow time.Duration) (*gorm.DB, error) {
	return gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), gormConfig(slow))
}

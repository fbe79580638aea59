package database

import (
	"fmt"
	"log"
	"math_tutor_backend/internal/config"
	"math_tutor_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.Solution{},
		&model.Student{},
		&model.Teacher{},
		&model.Topic{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认主题目录（空表时写入常见初中数学主题）
	var count int64
	db.Model(&model.Topic{}).Count(&count)
	if count == 0 {
		defaultTopics := []model.Topic{
			{Name: "三角形", Subject: "數學", Description: "三角形性質、勾股定理", Difficulty: model.DifficultyMedium},
			{Name: "一次函數", Subject: "數學", Description: "一次函數與直線方程", Difficulty: model.DifficultyEasy},
			{Name: "二次函數", Subject: "數學", Description: "二次函數、拋物線與配方", Difficulty: model.DifficultyMedium},
			{Name: "坐標平面", Subject: "數學", Description: "坐標系與象限", Difficulty: model.DifficultyEasy},
			{Name: "機率統計", Subject: "數學", Description: "機率、平均數與中位數", Difficulty: model.DifficultyHard},
		}
		for _, t := range defaultTopics {
			db.Create(&t)
		}
	}

	return db, nil
}

// 导入本地开发用的用户和测验记录
//
// 用户按邮箱幂等写入，已存在时只更新角色；测验记录每次都会追加。
//
// 用法: go run scripts/seed.go -fixtures scripts/seed.yaml

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/repository"
	"intellistudy_backend/internal/service"
	"intellistudy_backend/pkg/database"
	"intellistudy_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

type fixtures struct {
	Users []struct {
		Email    string `yaml:"email"`
		FullName string `yaml:"fullName"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	QuizResults []struct {
		CourseID    string                 `yaml:"courseId"`
		UserID      string                 `yaml:"userId"`
		Score       int                    `yaml:"score"`
		Total       int                    `yaml:"total"`
		Answers     map[string]interface{} `yaml:"answers"`
		CompletedAt time.Time              `yaml:"completedAt"`
	} `yaml:"quizResults"`
}

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	fixtureFile := flag.String("fixtures", "scripts/seed.yaml", "种子数据文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)

	data, err := os.ReadFile(*fixtureFile)
	if err != nil {
		log.Fatalf("无法读取种子数据: %v", err)
	}
	var f fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		log.Fatalf("解析种子数据失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	ctx := context.Background()
	users := service.NewUserService(repository.NewUserRepository(db))
	for _, u := range f.Users {
		user, err := users.Register(ctx, u.Email, u.FullName)
		if err != nil {
			log.Fatalf("写入用户 %s 失败: %v", u.Email, err)
		}
		if role := model.ParseRole(u.Role); role != model.Undetermined && role != user.Role {
			if err := db.Model(user).Update("role", role).Error; err != nil {
				log.Fatalf("更新用户 %s 角色失败: %v", u.Email, err)
			}
		}
	}

	quiz := service.NewQuizResultService(repository.NewQuizResultRepository(db), cfg.Quiz.QueryTimeout())
	for _, r := range f.QuizResults {
		result := &model.QuizResult{
			CourseID:    r.CourseID,
			UserID:      r.UserID,
			Score:       r.Score,
			Total:       r.Total,
			CompletedAt: r.CompletedAt,
		}
		if len(r.Answers) > 0 {
			raw, err := json.Marshal(r.Answers)
			if err != nil {
				log.Fatalf("序列化答案失败: %v", err)
			}
			result.Answers = datatypes.JSON(raw)
		}
		if err := quiz.RecordResult(ctx, result); err != nil {
			log.Fatalf("写入测验记录失败: %v", err)
		}
	}

	log.Printf("完成！用户 %d 个，测验记录 %d 条", len(f.Users), len(f.QuizResults))
}

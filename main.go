// @title Pfolio 后端 API
// @version 1.0
// @description 教师专业发展档案服务：教学实践、研讨会及PDF证明摘要。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"pfolio_backend/internal/app"
	"pfolio_backend/internal/config"
	"pfolio_backend/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	noSeed := flag.Bool("no-seed", false, "不加载演示数据")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *noSeed {
		cfg.Seed.DemoData = false
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}

package main

import (
	"log"

	"github.com/zhoukk/slidegen/internal/server"
	"github.com/zhoukk/slidegen/pkg/config"
	"github.com/zhoukk/slidegen/pkg/logger"
	"github.com/zhoukk/slidegen/pkg/util"
)

func main() {
	// 初始化配置
	if err := config.Init(); err != nil {
		log.Fatalf("初始化配置失败: %v", err)
	}

	if err := util.InitNode(config.GetUint64("server.node_id")); err != nil {
		log.Fatalf("初始化ID生成器失败: %v", err)
	}

	// 初始化日志
	logger.Init()

	// 创建服务器实例
	srv := server.New()

	// 启动服务器
	if err := srv.Start(); err != nil {
		log.Fatalf("服务停止: %v", err)
	}
}

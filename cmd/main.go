package main

import (
	"github.com/MrazzKa/CalorieCam-sub001/config"
	"github.com/MrazzKa/CalorieCam-sub001/controllers"
	"github.com/MrazzKa/CalorieCam-sub001/logger"
	"github.com/MrazzKa/CalorieCam-sub001/routes"
	"github.com/MrazzKa/CalorieCam-sub001/utils"
)

func main() {
	logger.Init()
	defer logger.Sync()

	config.InitDB()
	utils.InitS3()
	controllers.Init()

	r := routes.SetupRouter()
	addr := ":" + config.GetEnv("PORT", "8080")
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
	}
}

package main

import (
	"StudyCheck/internal/repository"
	"StudyCheck/pkg/logger"
)

func main() {
	logger.Init()
	defer logger.Sync()

	repository.RunGenerate()
}

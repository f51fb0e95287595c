package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdowncam/prefabs"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)

	if *logFileFlag != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logFileFlag,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}

	if *monitorFlag {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("topdowncam")

	var watch []string
	if *watchFlag {
		watch = []string{prefabs.Dir}
	}

	game, err := NewGame(watch, *debugFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

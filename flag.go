package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag   logLevelFlag
	debugFlag   = flag.Bool("debug", false, "show camera debug readout")
	logFileFlag = flag.String("logfile", "", "write logs to this rotating file instead of the console")
	watchFlag   = flag.Bool("watch", false, "reload prefabs/ when files change")
	monitorFlag = flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}

package util

import (
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // by design
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/config"
	"github.com/mpapenbr/pitwall-go/pkg/utils"
)

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// ParseDuration returns defaultVal if d is not a valid duration
func ParseDuration(d string, defaultVal time.Duration) time.Duration {
	ret, err := time.ParseDuration(d)
	if err != nil {
		log.Warn("Invalid duration value, using default",
			log.String("value", d),
			log.Duration("default", defaultVal))
		return defaultVal
	}
	return ret
}

// SetupLogger creates the logger from the log settings and installs it as
// default logger.
func SetupLogger() *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogFilter != "" {
		if filtered, err := logger.WithFilter(config.LogFilter); err == nil {
			logger = filtered
		} else {
			fmt.Fprintf(os.Stderr, "Invalid log filter %q: %v\n", config.LogFilter, err)
		}
	}
	log.ResetDefault(logger)
	return logger
}

// NewSQLLogger is used for tracing database queries
func NewSQLLogger() *log.Logger {
	level := ParseLogLevel(config.SQLLogLevel, log.InfoLevel)
	if config.LogFormat == "json" {
		return log.New(os.Stderr, level, log.WithCaller(true), log.AddCallerSkip(1)).Named("sql")
	}
	return log.DevLogger(os.Stderr, level, log.WithCaller(true), log.AddCallerSkip(1)).Named("sql")
}

func StartProfiling() {
	if config.ProfilingPort <= 0 {
		return
	}
	log.Info("Starting profiling server on port", log.Int("port", config.ProfilingPort))
	go func() {
		//nolint:gosec // by design
		err := http.ListenAndServe(
			fmt.Sprintf("localhost:%d", config.ProfilingPort),
			nil)
		if err != nil {
			log.Error("Profiling server stopped", log.ErrorField(err))
		}
	}()
}

func SetupGoRoutinesDump() {
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGQUIT)
		buf := make([]byte, 1<<20)
		for {
			<-sigs
			stacklen := runtime.Stack(buf, true)
			fmt.Printf("=== received SIGQUIT ===\n*** goroutine dump...\n%s\n*** end\n",
				buf[:stacklen])
		}
	}()
}

// WaitForRequiredServices blocks until the given addresses accept tcp
// connections. Empty addresses are skipped.
func WaitForRequiredServices(addrs ...string) {
	timeout := ParseDuration(config.WaitForServices, 60*time.Second)

	wg := sync.WaitGroup{}
	checkTCP := func(addr string) {
		defer wg.Done()
		if err := utils.WaitForTCP(addr, timeout); err != nil {
			log.Fatal("required services not ready", log.ErrorField(err))
		}
	}
	for _, addr := range addrs {
		if addr == "" {
			continue
		}
		wg.Add(1)
		go checkTCP(addr)
	}
	log.Debug("Waiting for connection checks to return")
	wg.Wait()
	log.Debug("Required services are available")
}

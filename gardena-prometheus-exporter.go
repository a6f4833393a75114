package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaClient"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaConfig"
)

var (
	sugar      *zap.SugaredLogger
	configPath string
)

func initLogger() {
	logger, err := gardenaConfig.NewLogger("gardena_exporter.log")
	if err != nil {
		panic(err)
	}
	sugar = logger.Sugar()
}

func initCliFlags() {
	flag.StringVar(&configPath, "configFile", "config.yaml", "Path to the config.yaml File.")
	flag.Parse()
}

func main() {
	initLogger()
	initCliFlags()
	defer sugar.Sync() // flushes buffer, if any

	sugar.Info("Starting Gardena-Exporter")
	cfg, err := gardenaConfig.Load(configPath, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		sugar.Info("Catch Keyboard interrupt")
		sugar.Sync()
		os.Exit(0)
	}()

	sugar.Info("Creating Metrics-Registry")
	reg := prometheus.NewRegistry()

	sugar.Info("Registering Metrics")
	reg.MustRegister(collectors.NewBuildInfoCollector())
	reg.MustRegister(collectors.NewGoCollector())

	hub := gardenaClient.NewHub(cfg.Gardena.Username, cfg.Gardena.Password, sugar,
		append(cfg.HubOptions(), gardenaClient.WithRegisterer(reg))...)
	scrapeTimeout := 2 * gardenaClient.DefaultTimeout
	if cfg.Gardena.Timeout > 0 {
		scrapeTimeout = 2 * time.Duration(cfg.Gardena.Timeout) * time.Second
	}
	reg.MustRegister(NewGardenaCollector(hub, sugar, scrapeTimeout))

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	metricsPath := ":" + cfg.Metrics.Port
	sugar.Infof("Metrics served at: %v", metricsPath)
	err = http.ListenAndServe(metricsPath, nil)
	if err != nil {
		sugar.Fatal(err)
	}
}

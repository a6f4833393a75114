package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	influxdb2 "github.com/influxdata/influxdb-client-go"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaClient"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaConfig"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

var tagEscaper = strings.NewReplacer(",", `\,`, " ", `\ `, "=", `\=`)

// propertyLines renders every numeric property of devices as an InfluxDB
// line protocol record.
func propertyLines(location gardenaStructs.Location, devices []gardenaStructs.Device, ts time.Time) []string {
	var lines []string
	for _, device := range devices {
		for _, ability := range device.Abilities {
			for _, property := range ability.Properties {
				value, ok := property.Float()
				if !ok {
					continue
				}
				line := fmt.Sprintf("gardena_%s,location=%s,deviceId=%s,device=%s,property=%s value=%f %d",
					tagEscaper.Replace(ability.Name),
					tagEscaper.Replace(location.Name),
					tagEscaper.Replace(device.Id),
					tagEscaper.Replace(device.Name),
					tagEscaper.Replace(property.Name),
					value,
					ts.UnixNano())
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// selectLocations keeps the locations named in names, or all when names is
// empty.
func selectLocations(locations []gardenaStructs.Location, names []string) []gardenaStructs.Location {
	if len(names) == 0 {
		return locations
	}
	var selected []gardenaStructs.Location
	for _, name := range names {
		idx := slices.IndexFunc(locations, func(l gardenaStructs.Location) bool { return l.Name == name || l.Id == name })
		if idx != -1 {
			selected = append(selected, locations[idx])
		}
	}
	return selected
}

var (
	sugar      *zap.SugaredLogger
	configPath string
	locations  string
)

func initLogger() {
	logger, err := gardenaConfig.NewLogger("gardena_influx_exporter.log")
	if err != nil {
		panic(err)
	}
	sugar = logger.Sugar()
}

func initCliFlags() {
	flag.StringVar(&configPath, "configFile", "config.yaml", "Path to the config.yaml File.")
	flag.StringVar(&locations, "locations", "", "Comma separated location names or ids to export, all when empty.")
	flag.Parse()
}

func main() {
	initLogger()
	initCliFlags()
	defer sugar.Sync() // flushes buffer, if any

	sugar.Info("Starting Influx-Exporter")
	cfg, err := gardenaConfig.Load(configPath, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	ctx := context.Background()

	hub := gardenaClient.NewHub(cfg.Gardena.Username, cfg.Gardena.Password, sugar, cfg.HubOptions()...)
	if err := hub.Login(ctx); err != nil {
		sugar.Fatal(err)
	}
	all, err := hub.RetrieveLocations(ctx)
	if err != nil {
		sugar.Fatal(err)
	}
	var names []string
	if locations != "" {
		names = strings.Split(locations, ",")
	}

	// Create a new client using an InfluxDB server base URL and an authentication token
	influxClient := influxdb2.NewClient(cfg.Influxdb.Host, cfg.Influxdb.Token)
	defer influxClient.Close()
	// Use blocking write client for writes to desired bucket
	influxApi := influxClient.WriteAPIBlocking(cfg.Influxdb.Org, cfg.Influxdb.Bucket)

	now := time.Now().UTC()
	for _, location := range selectLocations(all, names) {
		devices, err := hub.RetrieveDevices(ctx, location)
		if err != nil {
			sugar.Fatal(err)
		}
		lines := propertyLines(location, devices, now)
		sugar.Infof("Writing %d records for %s", len(lines), location.Name)
		if len(lines) == 0 {
			continue
		}
		if err := influxApi.WriteRecord(ctx, lines...); err != nil {
			sugar.Fatal(err)
		}
	}
}

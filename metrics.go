package main

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaClient"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

// gardenaCollector fetches all locations and devices on every scrape. The
// hub is not safe for concurrent use, so scrapes are serialized.
type gardenaCollector struct {
	mu      sync.Mutex
	hub     *gardenaClient.Hub
	sugar   *zap.SugaredLogger
	timeout time.Duration

	up            *prometheus.Desc
	deviceInfo    *prometheus.Desc
	propertyValue *prometheus.Desc
}

func NewGardenaCollector(hub *gardenaClient.Hub, sugar *zap.SugaredLogger, timeout time.Duration) *gardenaCollector {
	return &gardenaCollector{
		hub:     hub,
		sugar:   sugar,
		timeout: timeout,
		up: prometheus.NewDesc(
			"gardena_up",
			"Whether the last scrape of the Gardena API succeeded.",
			nil, nil),
		deviceInfo: prometheus.NewDesc(
			"gardena_device_info",
			"Device metadata, always 1.",
			[]string{"location", "device_id", "device", "category", "state"}, nil),
		propertyValue: prometheus.NewDesc(
			"gardena_property_value",
			"Numeric property value reported by a device ability.",
			[]string{"location", "device_id", "device", "ability", "property", "unit"}, nil),
	}
}

func (c *gardenaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.up
	ch <- c.deviceInfo
	ch <- c.propertyValue
}

func (c *gardenaCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	up := 1.0
	if err := c.collect(ctx, ch); err != nil {
		c.sugar.Error("Scrape failed: ", err)
		up = 0
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, up)
}

func (c *gardenaCollector) collect(ctx context.Context, ch chan<- prometheus.Metric) error {
	locations, err := c.retrieveLocations(ctx)
	if err != nil {
		return err
	}
	for _, location := range locations {
		devices, err := c.hub.RetrieveDevices(ctx, location)
		if err != nil {
			return err
		}
		for _, device := range devices {
			c.collectDevice(ch, location, device)
		}
	}
	return nil
}

func (c *gardenaCollector) collectDevice(ch chan<- prometheus.Metric, location gardenaStructs.Location, device gardenaStructs.Device) {
	ch <- prometheus.MustNewConstMetric(c.deviceInfo, prometheus.GaugeValue, 1,
		location.Name, device.Id, device.Name, device.Category, device.DeviceState)

	seen := map[[2]string]bool{}
	for _, ability := range device.Abilities {
		for _, property := range ability.Properties {
			value, ok := property.Float()
			key := [2]string{ability.Name, property.Name}
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			ch <- prometheus.MustNewConstMetric(c.propertyValue, prometheus.GaugeValue, value,
				location.Name, device.Id, device.Name, ability.Name, property.Name, property.Unit)
		}
	}
}

// retrieveLocations logs in when needed, and once more if the API rejects
// the current token.
func (c *gardenaCollector) retrieveLocations(ctx context.Context) ([]gardenaStructs.Location, error) {
	if !c.hub.LoggedIn() {
		if err := c.hub.Login(ctx); err != nil {
			return nil, err
		}
	}
	locations, err := c.hub.RetrieveLocations(ctx)
	if gardenaClient.IsUnauthorized(err) {
		c.sugar.Warn("Session rejected, logging in again")
		if err := c.hub.Login(ctx); err != nil {
			return nil, err
		}
		return c.hub.RetrieveLocations(ctx)
	}
	return locations, err
}

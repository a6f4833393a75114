package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaClient"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaCommands"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaConfig"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

const usage = `Usage: gardena-cli [-configFile config.yaml] <command> [arguments]

Commands:
  locations                                  list the locations of the account
  devices <locationId>                       list the devices of a location
  send <locationId> <deviceId> <ability> <command> [value | name=value ...]
                                             send a command to a device
  commands                                   list the known commands
`

var errUsage = errors.New("invalid arguments")

// parseValue turns a command line argument into an int, float, bool or
// string, in that order of preference.
func parseValue(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// buildCommand binds args to the declared command. Arguments of the form
// name=value are passed by name, all others by position.
func buildCommand(ability, name string, args []string) (gardenaCommands.Command, error) {
	spec, err := gardenaCommands.Lookup(ability, name)
	if err != nil {
		return gardenaCommands.Command{}, err
	}
	var positional []any
	named := map[string]any{}
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok {
			named[key] = parseValue(value)
			continue
		}
		if len(named) > 0 {
			return gardenaCommands.Command{}, fmt.Errorf("positional argument %q after named arguments: %w", arg, errUsage)
		}
		positional = append(positional, parseValue(arg))
	}
	return spec.Bind(positional, named)
}

func printYaml(w io.Writer, records any) error {
	var flat []map[string]any
	switch r := records.(type) {
	case []gardenaStructs.Location:
		for _, l := range r {
			flat = append(flat, gardenaStructs.Flatten(l))
		}
	case []gardenaStructs.Device:
		for _, d := range r {
			flat = append(flat, gardenaStructs.Flatten(d))
		}
	default:
		return fmt.Errorf("cannot print %T", records)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(flat)
}

func printCommands(w io.Writer) {
	for _, family := range gardenaCommands.Families() {
		for _, spec := range family.Commands {
			params := make([]string, 0, len(spec.Params))
			for _, p := range spec.Params {
				if p.HasDefault {
					params = append(params, fmt.Sprintf("%s=%v", p.Name, p.Default))
				} else {
					params = append(params, p.Name)
				}
			}
			fmt.Fprintf(w, "%s %s %s\n", spec.Ability, spec.Name, strings.Join(params, " "))
		}
	}
}

func run(ctx context.Context, hub *gardenaClient.Hub, w io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "commands":
		printCommands(w)
		return nil
	case "locations":
		if err := hub.Login(ctx); err != nil {
			return err
		}
		locations, err := hub.RetrieveLocations(ctx)
		if err != nil {
			return err
		}
		return printYaml(w, locations)
	case "devices":
		if len(args) != 2 {
			return errUsage
		}
		if err := hub.Login(ctx); err != nil {
			return err
		}
		devices, err := hub.RetrieveDevices(ctx, gardenaStructs.Location{Id: args[1]})
		if err != nil {
			return err
		}
		return printYaml(w, devices)
	case "send":
		if len(args) < 5 {
			return errUsage
		}
		cmd, err := buildCommand(args[3], args[4], args[5:])
		if err != nil {
			return err
		}
		if err := hub.Login(ctx); err != nil {
			return err
		}
		location := gardenaStructs.Location{Id: args[1]}
		device := gardenaStructs.Device{Id: args[2]}
		if err := hub.SendCommand(ctx, location, device, cmd); err != nil {
			return err
		}
		fmt.Fprintf(w, "sent %s to %s\n", cmd, device.Id)
		return nil
	}
	return errUsage
}

// cliLoggerConfig keeps log lines on stderr, stdout carries the YAML output.
func cliLoggerConfig() zap.Config {
	cfg := gardenaConfig.LoggerConfig("stderr")
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "configFile", "config.yaml", "Path to the config.yaml File.")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	logger, err := cliLoggerConfig().Build()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer sugar.Sync()

	cfg, err := gardenaConfig.Load(configPath, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	hub := gardenaClient.NewHub(cfg.Gardena.Username, cfg.Gardena.Password, sugar, cfg.HubOptions()...)
	if err := run(context.Background(), hub, os.Stdout, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		sugar.Fatal(err)
	}
}

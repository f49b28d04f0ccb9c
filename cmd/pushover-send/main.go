package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/Veraticus/pushover-channel/pkg/config"
	"github.com/Veraticus/pushover-channel/pkg/logx"
)

func main() {
	var (
		configPath string
		user       string
		token      string
		devices    []string
		sound      string
		priority   string
		retry      string
		expire     string
		help       bool
		opts       Options
	)

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&user, "user", "", "User or group key to notify")
	flag.StringVar(&token, "token", "", "Application token")
	flag.StringSliceVar(&devices, "device", nil, "Device to notify (repeatable or comma-separated)")
	flag.StringVar(&sound, "sound", "", "Notification sound")
	flag.StringVar(&priority, "priority", "", "Priority: lowest, low, normal, high or emergency")
	flag.StringVar(&retry, "retry", "", "Emergency retry interval, e.g. 60s")
	flag.StringVar(&expire, "expire", "", "Emergency expiry, e.g. 1h")
	flag.StringVar(&opts.Title, "title", "", "Message title")
	flag.StringVar(&opts.URL, "url", "", "Supplementary URL")
	flag.StringVar(&opts.URLTitle, "url-title", "", "Title for the supplementary URL")
	flag.Int64Var(&opts.Timestamp, "timestamp", 0, "Message time as Unix seconds (default: time of receipt)")
	flag.BoolVarP(&help, "help", "h", false, "Show help message")
	flag.Parse()

	if help {
		printUsage()
		os.Exit(0)
	}

	opts.Message = strings.Join(flag.Args(), " ")
	if opts.Message == "" {
		fmt.Fprintln(os.Stderr, "Error: a message is required")
		printUsage()
		os.Exit(2)
	}

	// Flags are applied through the environment so they take precedence over
	// the config file and are validated together with it.
	overrides := map[string]string{
		"PUSHOVER_CONFIG":   configPath,
		"PUSHOVER_USER":     user,
		"PUSHOVER_TOKEN":    token,
		"PUSHOVER_SOUND":    sound,
		"PUSHOVER_PRIORITY": priority,
		"PUSHOVER_RETRY":    retry,
		"PUSHOVER_EXPIRE":   expire,
	}
	if flag.CommandLine.Changed("device") {
		overrides["PUSHOVER_DEVICES"] = strings.Join(devices, ",")
	}
	for key, value := range overrides {
		if value == "" && key != "PUSHOVER_DEVICES" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting %s: %v\n", key, err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	deps, err := NewDependencies(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating dependencies: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApplication(deps)
	if err := app.Run(ctx, opts); err != nil {
		if !errors.Is(err, ErrDeliveryFailed) {
			deps.Logger.Error("sending notification failed", logx.Err(err))
		}
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("pushover-send - send a Pushover notification")
	fmt.Println()
	fmt.Println("Usage: pushover-send [OPTIONS] MESSAGE...")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  PUSHOVER_TOKEN       Application token")
	fmt.Println("  PUSHOVER_USER        User or group key")
	fmt.Println("  PUSHOVER_DEVICES     Devices to notify (comma-separated)")
	fmt.Println("  PUSHOVER_SOUND       Notification sound")
	fmt.Println("  PUSHOVER_PRIORITY    Message priority")
	fmt.Println("  PUSHOVER_RETRY       Emergency retry interval")
	fmt.Println("  PUSHOVER_EXPIRE      Emergency expiry")
	fmt.Println("  PUSHOVER_TIMEOUT     HTTP timeout (default: 10s)")
	fmt.Println("  PUSHOVER_LOG_LEVEL   Log level (default: info)")
	fmt.Println("  PUSHOVER_LOG_JSON    Log as JSON (true/false)")
	fmt.Println("  PUSHOVER_CONFIG      Path to config file")
	fmt.Println()
	fmt.Println("Configuration file: ~/.config/pushover-channel/config.yaml")
}

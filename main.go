package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/yaml"
	"github.com/s-hammon/lazyrng/pkg/app"
	"github.com/s-hammon/lazyrng/pkg/config"
	"github.com/s-hammon/lazyrng/pkg/utils"
	"github.com/samber/lo"
)

const DEFAULT_VERSION = "unversioned"

var (
	commit      string
	version     = DEFAULT_VERSION
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false

	mtAddrFlag  = ""
	mtiAddrFlag = ""
)

func main() {
	updateBuildInfo()

	flaggy.SetName("lazyrng")
	flaggy.SetDescription("Watch the RNG of a running FFXII The Zodiac Age from your terminal")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/s-hammon/lazyrng"

	flaggy.Bool(&configFlag, "c", "config", "Print the default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "Log at debug level")
	flaggy.SetVersion(version)

	uiCmd := flaggy.NewSubcommand("ui")
	uiCmd.Description = "Run the live TUI (the default)"
	flaggy.AttachSubcommand(uiCmd, 1)

	infoCmd := flaggy.NewSubcommand("info")
	infoCmd.Description = "Locate the generator once and print its addresses"
	infoCmd.String(&mtAddrFlag, "", "mt", "MT address (hex), skips the signature search")
	infoCmd.String(&mtiAddrFlag, "", "mti", "MTI address (hex), skips the signature search")
	flaggy.AttachSubcommand(infoCmd, 1)

	randomCmd := flaggy.NewSubcommand("random")
	randomCmd.Description = "Reserved diagnostic"
	flaggy.AttachSubcommand(randomCmd, 1)

	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		if err := encoder.Encode(config.GetDefaultConfig()); err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", utils.ColoredYamlString(buf.String()))
		os.Exit(0)
	}

	projectDir, err := os.Getwd()
	if err != nil {
		log.Fatal(err.Error())
	}

	appConfig, err := config.NewAppConfig("lazyrng", version, commit, date, buildSource, debuggingFlag, projectDir)
	if err != nil {
		log.Fatal(err.Error())
	}

	app, err := app.NewApp(appConfig)
	if err == nil {
		switch {
		case infoCmd.Used:
			err = app.RunInfo(mtAddrFlag, mtiAddrFlag)
		case randomCmd.Used:
			err = app.RunRandom()
		default:
			err = app.Run()
		}
	}
	_ = app.Close()

	if err != nil {
		newErr := errors.Wrap(err, 0)
		stackTrace := newErr.ErrorStack()
		app.Log.Error(stackTrace)

		log.Fatalf("%s\n\n%s", app.Tr.ErrorOccurred, err.Error())
	}
}

func updateBuildInfo() {
	if version == DEFAULT_VERSION {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			revision, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.revision"
			})
			if ok {
				commit = revision.Value
				// if lazyrng was built from source we'll show the version as
				// the abbreviated commit hash
				version = utils.SafeTruncate(revision.Value, 7)
			}

			// if version hasn't been set we assume that neither has the date
			time, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.time"
			})
			if ok {
				date = time.Value
			}
		}
	}
}

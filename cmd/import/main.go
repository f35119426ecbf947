package main

import (
	"fmt"
	"os"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/config"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/database"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/importer"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var flagDir *cli.StringFlag = &cli.StringFlag{
	Name:    "dir",
	Aliases: []string{"d"},
	Value:   ".",
	Usage:   "Directory holding kategoria.txt, hozzavalo.txt, etel.txt and hasznalt.txt",
}

var flagEnvFile *cli.StringFlag = &cli.StringFlag{
	Name:  "env-file",
	Value: ".env",
	Usage: "Optional .env file with the database settings",
}

var flagVerbose *cli.BoolFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "Enable debug logging",
}

func main() {
	app := &cli.App{
		Name:  "import",
		Usage: "Replace the recipe catalog with the contents of the text exports",
		Flags: []cli.Flag{
			flagDir,
			flagEnvFile,
			flagVerbose,
		},
		Action: func(cCtx *cli.Context) error {
			if err := godotenv.Load(cCtx.String(flagEnvFile.Name)); err != nil {
				log.Warn("No .env file found, using system environment variables")
			}
			log.SetFormatter(&log.JSONFormatter{})
			level := log.InfoLevel
			if cCtx.Bool(flagVerbose.Name) {
				level = log.DebugLevel
			}
			log.SetLevel(level)
			database.SetLogLevel(level)
			importer.SetLogLevel(level)

			conf, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			db, err := database.InitDatabase(conf.Database())
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			dir := cCtx.String(flagDir.Name)
			log.WithField("dir", dir).Info("Import started")
			report, err := importer.Run(db, os.DirFS(dir))
			if err != nil {
				return fmt.Errorf("import aborted: %w", err)
			}
			fmt.Println(report)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

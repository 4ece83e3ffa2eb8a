package main

import (
	"errors"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/oplogo"
	"github.com/bodgit/oplogo/plmn"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func setup(c *cli.Context) (*config, *log.Logger, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if c.IsSet("db") {
		cfg.DB = c.String("db")
	}

	return cfg, logger, nil
}

func networkFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "mcc",
			Usage: "mobile country code",
		},
		&cli.IntFlag{
			Name:  "mnc",
			Usage: "mobile network code",
		},
	}
}

func network(c *cli.Context, cfg *config) (plmn.ID, error) {
	id := cfg.network()
	if c.IsSet("mcc") {
		id.MCC = c.Int("mcc")
	}
	if c.IsSet("mnc") {
		id.MNC = c.Int("mnc")
	}
	if !id.Valid() {
		return plmn.ID{}, fmt.Errorf("network %d-%d out of range", id.MCC, id.MNC)
	}
	return id, nil
}

func requireArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}
}

func show(c *cli.Context, l *oplogo.Logo) error {
	fmt.Fprintf(c.App.Writer, "network: %s\n", l.Network())
	fmt.Fprintf(c.App.Writer, "hex:     %s\n", l.EncodeHex())
	fmt.Fprintf(c.App.Writer, "token:   %s\n", l.Token())
	return writeText(c.App.Writer, l)
}

func main() {
	app := cli.NewApp()

	app.Name = "oplogo"
	app.Usage = "Smart Messaging operator logo utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"OPLOGO_DB"},
			Value:   defaultDB,
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"OPLOGO_CONFIG"},
			Usage:   "path to YAML configuration file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert an image into a logo",
			ArgsUsage: "FILE",
			Flags: append([]cli.Flag{
				&cli.BoolFlag{
					Name:  "token",
					Usage: "print the share token rather than hex",
				},
			}, networkFlags()...),
			Action: func(c *cli.Context) error {
				requireArgs(c, 1)

				cfg, _, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				id, err := network(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, err := oplogo.ReadImage(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				l := oplogo.New()
				if err := l.SetNetwork(id); err != nil {
					return cli.Exit(err, 1)
				}
				if err := l.SetImage(m); err != nil {
					return cli.Exit(err, 1)
				}

				if c.Bool("token") {
					fmt.Fprintln(c.App.Writer, l.Token())
				} else {
					fmt.Fprintln(c.App.Writer, l.EncodeHex())
				}

				return nil
			},
		},
		{
			Name:      "render",
			Usage:     "Render a logo as PNG or text",
			ArgsUsage: "PAYLOAD",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write a PNG to `FILE` instead of text to stdout",
				},
			}, networkFlags()...),
			Action: func(c *cli.Context) error {
				requireArgs(c, 1)

				cfg, _, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				id, err := network(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				l, err := parsePayload(c.Args().First(), id)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if file := c.String("output"); file != "" {
					if err := writePNG(file, l); err != nil {
						return cli.Exit(err, 1)
					}
					return nil
				}

				return writeText(c.App.Writer, l)
			},
		},
		{
			Name:      "share",
			Usage:     "Print the share token of a logo",
			ArgsUsage: "HEX",
			Action: func(c *cli.Context) error {
				requireArgs(c, 1)

				l, err := oplogo.FromHex(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Fprintln(c.App.Writer, l.Token())
				return nil
			},
		},
		{
			Name:      "restore",
			Usage:     "Print the hex form of a share token",
			ArgsUsage: "TOKEN",
			Flags:     networkFlags(),
			Action: func(c *cli.Context) error {
				cfg, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				id, err := network(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				l, err := oplogo.ParseToken(c.Args().First())
				if err != nil {
					logger.Printf("Falling back to the default logo: %v\n", err)
					if l, err = oplogo.FromBase64(oplogo.DefaultToken); err != nil {
						return cli.Exit(err, 1)
					}
				}

				if err := l.SetNetwork(id); err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Fprintln(c.App.Writer, l.EncodeHex())
				return nil
			},
		},
		{
			Name:      "save",
			Usage:     "Save a logo to the database",
			ArgsUsage: "NAME PAYLOAD",
			Flags:     networkFlags(),
			Action: func(c *cli.Context) error {
				requireArgs(c, 2)

				cfg, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				id, err := network(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				l, err := parsePayload(c.Args().Get(1), id)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := oplogo.NewLogoDB(cfg.DB)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if _, err := db.Save(c.Args().First(), l); err != nil {
					return cli.Exit(err, 1)
				}
				logger.Printf("Saved \"%s\"\n", c.Args().First())

				return nil
			},
		},
		{
			Name:      "show",
			Usage:     "Show a logo from the database",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				requireArgs(c, 1)

				cfg, _, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := oplogo.NewLogoDB(cfg.DB)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				l, err := db.Load(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				return show(c, l)
			},
		},
		{
			Name:  "list",
			Usage: "List logos in the database",
			Action: func(c *cli.Context) error {
				cfg, _, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := oplogo.NewLogoDB(cfg.DB)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				entries, err := db.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, e := range entries {
					fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", e.Name, e.Network, e.SHA1)
				}

				return nil
			},
		},
		{
			Name:      "delete",
			Usage:     "Delete a logo from the database",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				requireArgs(c, 1)

				cfg, _, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := oplogo.NewLogoDB(cfg.DB)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.Delete(c.Args().First()); err != nil {
					if errors.Is(err, oplogo.ErrNotFound) {
						return cli.Exit(fmt.Sprintf("no logo named \"%s\"", c.Args().First()), 1)
					}
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import a directory of images into the database",
			ArgsUsage: "DIRECTORY",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Usage: "number of concurrent workers",
				},
			}, networkFlags()...),
			Action: func(c *cli.Context) error {
				requireArgs(c, 1)

				cfg, logger, err := setup(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				id, err := network(c, cfg)
				if err != nil {
					return cli.Exit(err, 1)
				}

				workers := cfg.Workers
				if c.IsSet("workers") {
					workers = c.Int("workers")
				}

				db, err := oplogo.NewLogoDB(cfg.DB)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := oplogo.NewLibrary(db, logger, id, workers).Import(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"image/color"
	"io/ioutil"
	"log"
	"os"
	"text/tabwriter"

	"github.com/bodgit/tileset"
	"github.com/bodgit/tileset/atlas"
	"github.com/bodgit/tileset/sheet"
	"github.com/urfave/cli/v2"
)

const (
	defaultColumns = 16
	defaultRows    = 16
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func codepoints(c *cli.Context) ([]int, error) {
	switch name := c.String("charmap"); name {
	case "", "identity":
		return nil, nil
	case "cp437":
		return tileset.CP437(), nil
	default:
		return nil, fmt.Errorf("unknown charmap %q", name)
	}
}

func load(c *cli.Context) (*tileset.Tileset, error) {
	cps, err := codepoints(c)
	if err != nil {
		return nil, err
	}
	return tileset.Load(c.Args().First(), c.Int("columns"), c.Int("rows"), cps)
}

func main() {
	app := cli.NewApp()

	app.Name = "tileset"
	app.Usage = "Sprite sheet tileset utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "columns",
			Aliases: []string{"c"},
			EnvVars: []string{"TILESET_COLUMNS"},
			Value:   defaultColumns,
			Usage:   "number of tile columns in the sheet",
		},
		&cli.IntFlag{
			Name:    "rows",
			Aliases: []string{"r"},
			EnvVars: []string{"TILESET_ROWS"},
			Value:   defaultRows,
			Usage:   "number of tile rows in the sheet",
		},
		&cli.StringFlag{
			Name:    "charmap",
			EnvVars: []string{"TILESET_CHARMAP"},
			Value:   "identity",
			Usage:   "codepoint layout of the sheet (identity, cp437)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "inspect",
			Usage:       "Load a sprite sheet and describe its tiles",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				cps, err := codepoints(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := sheet.DecodeFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				ts, report, err := tileset.Build(m, c.Int("columns"), c.Int("rows"), cps)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer ts.Release()

				fmt.Printf("Tile size:\t%dx%d\n", ts.TileWidth(), ts.TileHeight())
				fmt.Printf("Tiles:\t\t%d\n", ts.TileCount())
				fmt.Printf("Glyph tiles:\t%d\n", report.Glyphs())
				if report.HasColorKey {
					k := report.ColorKey
					fmt.Printf("Color key:\t#%02x%02x%02x%02x\n", k.R, k.G, k.B, k.A)
				} else {
					fmt.Printf("Color key:\tnone\n")
				}

				if !c.Bool("verbose") {
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
				fmt.Fprintln(w, "TILE\tCODEPOINTS\tCOLOR\tALPHA\tBLANK")
				buf := make([]color.NRGBA, ts.TileLength())
				for i := 0; i < ts.TileCount(); i++ {
					if err := ts.Tile(i, buf); err != nil {
						return cli.NewExitError(err, 1)
					}
					class := report.Tiles[i]
					fmt.Fprintf(w, "%d\t%U\t%t\t%t\t%t\n", i, ts.Codepoints(i), class.HasColor, class.HasAlpha, blank(buf))
				}
				return w.Flush()
			},
		},
		{
			Name:        "export",
			Usage:       "Normalize a sprite sheet and write it back out as an atlas",
			Description: "",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce the atlas to a palette of this many colors",
				},
				&cli.IntSliceFlag{
					Name:  "clear",
					Usage: "blank the tile for this codepoint before writing",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				ts, err := load(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer ts.Release()

				a, err := atlas.New(ts)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer a.Close()

				blankTile := make([]color.NRGBA, ts.TileLength())
				for _, codepoint := range c.IntSlice("clear") {
					if err := ts.SetTile(codepoint, blankTile); err != nil {
						return cli.NewExitError(err, 1)
					}
				}
				logger.Printf("Redrew tiles %v\n", a.Dirty())

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				if n := c.Int("colors"); n > 0 {
					err = a.EncodePaletted(f, n)
				} else {
					err = a.Encode(f)
				}
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan a directory of sprite sheets",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s := tileset.NewScanner(c.Int("columns"), c.Int("rows"), newLogger(c))

				results, err := s.Scan(context.Background(), c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, ' ', 0)
				fmt.Fprintln(w, "SHEET\tTILE SIZE\tTILES\tGLYPHS\tCOLOR KEY")
				for _, r := range results {
					fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%t\n", r.Path, r.TileWidth, r.TileHeight, r.Tiles, r.Glyphs, r.HasColorKey)
				}
				return w.Flush()
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func blank(pixels []color.NRGBA) bool {
	for _, p := range pixels {
		if p != (color.NRGBA{}) {
			return false
		}
	}
	return true
}

// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xnat-tools/xnatio/sdk/config"
	"github.com/xnat-tools/xnatio/sdk/settings"
	"github.com/xnat-tools/xnatio/sdk/utils"
	"github.com/xnat-tools/xnatio/sdk/xnatio"
)

var errNoHost = errors.New(`no XNAT host configured, run "xnatio login" or set XNAT_HOST`)

// app carries what every command shares: streams, flags and resolved settings.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	fs     afero.Fs
	http   *http.Client

	settingsPath string
	hostName     string
	url          string
	user         string
	password     string
	output       string
	logLevel     string
	timeout      time.Duration

	store *settings.Store
	v     *viper.Viper
	log   *slog.Logger
}

func newApp() *app {
	return &app{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		fs:     afero.NewOsFs(),
		http:   &http.Client{},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "xnatio",
		Short: "Browse, download and upload XNAT archive content",
		Long: `xnatio is a command-line client for XNAT imaging archives.

Hosts are stored in ~/.xnatio.ini by "xnatio login"; passwords are never
stored and are read from --password or XNAT_PASSWORD. Environment variables
(and a .env file in the working directory) override stored settings:
XNAT_HOST, XNAT_USER, XNAT_PASSWORD, XNAT_LOG_LEVEL, XNAT_S3_BUCKET.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.settingsPath, "settings", settings.DefaultPath(), "Settings file")
	pf.StringVarP(&a.hostName, "host", "H", "", "Stored host name (default: the default host)")
	pf.StringVar(&a.url, "url", "", "XNAT server URL, overrides the stored host")
	pf.StringVarP(&a.user, "user", "u", "", "User name")
	pf.StringVarP(&a.password, "password", "p", "", "Password (default: XNAT_PASSWORD)")
	pf.StringVarP(&a.output, "output", "o", utils.FormatShort, "Output format: short, json or yaml")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.DurationVar(&a.timeout, "timeout", 0, "Timeout of each HTTP call (0: none)")

	root.AddCommand(
		newLoginCmd(a),
		newHostsCmd(a),
		newLsCmd(a),
		newSearchCmd(a),
		newGetCmd(a),
		newPutCmd(a),
		newRmCmd(a),
		newMkdirCmd(a),
		newMirrorCmd(a),
	)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root
}

func (a *app) setup() error {
	store, err := settings.Load(a.settingsPath)
	if err != nil {
		return err
	}
	v, err := store.Viper(a.hostName)
	if err != nil {
		return err
	}

	level := a.logLevel
	if level == "" {
		level = v.GetString(settings.KeyLogLevel)
	}
	log, err := utils.NewLogger(a.errOut, level)
	if err != nil {
		return err
	}

	a.store, a.v, a.log = store, v, log
	return nil
}

// resolved returns a flag value, falling back to the viper key.
func (a *app) resolved(flag, key string) string {
	if flag != "" {
		return flag
	}
	return a.v.GetString(key)
}

func (a *app) client() (*xnatio.Client, error) {
	host := a.resolved(a.url, settings.KeyHost)
	if host == "" {
		return nil, errNoHost
	}
	conf := config.Config{
		Core: config.CoreConfig{
			Host:     host,
			Username: a.resolved(a.user, settings.KeyUser),
			Password: a.resolved(a.password, settings.KeyPassword),
		},
		Transfer: config.TransferConfig{Timeout: a.timeout},
	}
	if a.timeout > 0 {
		a.http.Timeout = a.timeout
	}
	c, err := xnatio.NewFromConfig(conf,
		xnatio.WithHTTPClient(a.http),
		xnatio.WithFs(a.fs),
		xnatio.WithLogger(a.log),
	)
	if err != nil {
		return nil, err
	}
	a.log.Debug("configured client", "host", c.Host(), "user", c.User())
	return c, nil
}

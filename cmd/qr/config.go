// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config holds the defaults taken from the environment.  Flags
// override them.
type config struct {
	Level      string  `env:"QR_LEVEL" envDefault:"l"`
	Scale      uint64  `env:"QR_SCALE" envDefault:"4"`
	Margin     int     `env:"QR_MARGIN" envDefault:"4"`
	Foreground rgba    `env:"QR_FOREGROUND" envDefault:"black"`
	Background rgba    `env:"QR_BACKGROUND" envDefault:"white"`
	Radius     float64 `env:"QR_RADIUS" envDefault:"0"`
	MinVersion uint64  `env:"QR_MIN_VERSION" envDefault:"1"`
	MaxVersion uint64  `env:"QR_MAX_VERSION" envDefault:"40"`
	Font       string  `env:"QR_FONT"`
}

// loadConfig reads .env, if present, and the environment.
func loadConfig() (*config, error) {
	if err := godotenv.Load(); err != nil &&
		!errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var c config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

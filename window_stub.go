//go:build !ebiten

package main

import "github.com/pkg/errors"

func runWindow(*game) error {
	return errors.New("[runWindow] window mode requires building with the 'ebiten' tag, e.g. go build -tags ebiten")
}

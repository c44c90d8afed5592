package assets

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Config holds the example files written by the generate command
//
//go:embed static/docker-compose.yaml
var Config embed.FS

// ComposeFileName is the name the example compose file is written as
const ComposeFileName = "docker-compose.yaml"

// WriteConfigFiles writes every example file to dst, creating it if needed
func WriteConfigFiles(dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("can not create %s: %w", dst, err)
	}

	return WriteCompose(dst)
}

// WriteCompose will write the example docker-compose asset to the specified location
func WriteCompose(dst string) error {
	file, err := Config.Open("static/" + ComposeFileName)
	if err != nil {
		return fmt.Errorf("can not open docker-compose asset: %w", err)
	}
	defer file.Close()

	dst = filepath.Join(dst, ComposeFileName)
	to, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("can not open destination location: %w", err)
	}
	defer to.Close()

	_, err = io.Copy(to, file)
	return err
}

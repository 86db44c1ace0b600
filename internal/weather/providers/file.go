package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/i474232898/weather-display/internal/weather"
)

// FileProvider reads previously saved documents from disk.
type FileProvider struct {
	currentPath  string
	forecastPath string
}

func NewFileProvider(currentPath, forecastPath string) *FileProvider {
	return &FileProvider{currentPath: currentPath, forecastPath: forecastPath}
}

func (p *FileProvider) Name() string {
	return "file"
}

func (p *FileProvider) FetchCurrent(ctx context.Context, _ weather.Location) (weather.Tree, error) {
	return readTree(ctx, p.currentPath)
}

func (p *FileProvider) FetchForecast(ctx context.Context, _ weather.Location) (weather.Tree, error) {
	return readTree(ctx, p.forecastPath)
}

func readTree(ctx context.Context, path string) (weather.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	tree, err := weather.DecodeTree(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

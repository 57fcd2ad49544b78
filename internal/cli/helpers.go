package cli

import (
	"fmt"
	"os"

	"github.com/glorpus-work/narma/internal/logger"
	"github.com/glorpus-work/narma/pkg/cache"
	"github.com/glorpus-work/narma/pkg/config"
	"github.com/glorpus-work/narma/pkg/toolchain"
)

// loadConfig loads the configuration from the file named by NARMA_CONFIG (or
// ./.narma.yaml), applies environment overrides and configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitLogger(cfg.Settings.LogLevel, logger.OutputFormat(cfg.Settings.LogFormat))
	logger.Debug("Configuration loaded", logger.Fields{
		"cache_dir": cfg.Settings.CacheDir,
		"compiler":  cfg.Settings.Compiler,
		"diff_tool": cfg.Settings.DiffTool,
	})
	return cfg, nil
}

func newCompiler(cfg *config.Config, runner toolchain.Runner) *toolchain.Compiler {
	return toolchain.NewCompiler(runner, cfg.Settings.Compiler, cfg.Settings.ACIRFlag)
}

// loadOperation builds the cache operation every cache command runs through.
func loadOperation() (*cache.Operation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	runner := toolchain.NewExecRunner("")
	return cache.NewOperation(
		cache.NewManager(cfg.GetCacheDir()),
		newCompiler(cfg, runner),
		toolchain.NewDiffTool(runner, cfg.Settings.DiffTool),
		cache.WithCompilerConstraint(cfg.Settings.CompilerConstraint),
	), nil
}

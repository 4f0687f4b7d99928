package observability

import (
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/smfc-manager/internal/config"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
)

// InitPyroscope starts continuous profiling when enabled. The returned stop
// func is always non-nil.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              profilingTags(cfg),
		ProfileTypes:      profileTypes(cfg.AppEnv),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return profiler.Stop, nil
}

func profilingTags(cfg config.Config) map[string]string {
	return map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
		"version": cfg.ServiceVersion,
		"storage": cfg.StorageBackend,
	}
}

// profileTypes keeps prod to CPU and heap; other envs also collect
// goroutine and mutex profiles.
func profileTypes(appEnv string) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseSpace,
	}
	if appEnv == config.EnvProd {
		return types
	}
	return append(types, pyroscope.ProfileGoroutines, pyroscope.ProfileMutexDuration)
}

package build

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btclog/v2"
)

// ParseAndSetDebugLevels applies a debug level string to logger. The
// string is either a single level for all subsystems, or a comma
// separated list of subsystem=level pairs, optionally led by a global level.
// Nothing is applied unless the whole string is valid.
func ParseAndSetDebugLevels(level string, logger LeveledSubLogger) error {
	if level == "" {
		return fmt.Errorf("empty debug level")
	}

	var (
		globalLevel string
		pairs       = strings.Split(level, ",")
		subLevels   = make(map[string]string, len(pairs))
		subLoggers  = logger.SubLoggers()
	)

	if !strings.Contains(pairs[0], "=") {
		globalLevel = pairs[0]
		if !validLogLevel(globalLevel) {
			return fmt.Errorf("the specified debug level [%v] is "+
				"invalid", globalLevel)
		}
		pairs = pairs[1:]
	}

	for _, pair := range pairs {
		subsystem, subLevel, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("the specified debug level contains "+
				"an invalid subsystem/level pair [%v]", pair)
		}
		if strings.Contains(subLevel, "=") {
			return fmt.Errorf("the specified debug level has an "+
				"invalid format [%v], use format "+
				"subsystem1=level1,subsystem2=level2", pair)
		}

		if _, ok := subLoggers[subsystem]; !ok {
			return fmt.Errorf("the specified subsystem [%v] is "+
				"invalid, supported subsystems are %v",
				subsystem, logger.SupportedSubsystems())
		}
		if !validLogLevel(subLevel) {
			return fmt.Errorf("the specified debug level [%v] is "+
				"invalid", subLevel)
		}

		subLevels[subsystem] = subLevel
	}

	if globalLevel != "" {
		logger.SetLogLevels(globalLevel)
	}
	for subsystem, subLevel := range subLevels {
		logger.SetLogLevel(subsystem, subLevel)
	}

	return nil
}

// validLogLevel returns whether logLevel names a btclog level.
func validLogLevel(logLevel string) bool {
	_, ok := btclog.LevelFromString(logLevel)

	return ok
}

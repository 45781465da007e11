/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package format

import (
	"fmt"
	"sort"
	"strings"
)

// ConsolePattern is the conversion pattern of the console appender.
const ConsolePattern = "%d{ISO8601} %5p [%t] %c{2}: %m%n"

// Log4j2Config describes the generated log4j2 setup of one container.
type Log4j2Config struct {
	// LogDir is the directory of the rolling XML log file
	LogDir string
	// LogFile is the file name inside LogDir
	LogFile string
	// MaxFileSizeMiB is the size at which the file is rolled
	MaxFileSizeMiB int
	// ArchivedFiles is the number of rolled files kept
	ArchivedFiles int

	RootLevel    string
	ConsoleLevel string
	FileLevel    string

	// Loggers maps a logger name to its level
	Loggers map[string]string
}

// Log4j2Properties returns the log4j2 configuration as flat properties.
// Keys can then be overridden one by one before rendering with Properties.
func Log4j2Properties(c Log4j2Config) map[string]string {
	p := map[string]string{
		"appenders": "FILE, CONSOLE",

		"appender.CONSOLE.type":                   "Console",
		"appender.CONSOLE.name":                   "CONSOLE",
		"appender.CONSOLE.target":                 "SYSTEM_ERR",
		"appender.CONSOLE.layout.type":            "PatternLayout",
		"appender.CONSOLE.layout.pattern":         ConsolePattern,
		"appender.CONSOLE.filter.threshold.type":  "ThresholdFilter",
		"appender.CONSOLE.filter.threshold.level": c.ConsoleLevel,

		"appender.FILE.type":                   "RollingFile",
		"appender.FILE.name":                   "FILE",
		"appender.FILE.fileName":               c.LogDir + "/" + c.LogFile,
		"appender.FILE.filePattern":            c.LogDir + "/" + c.LogFile + ".%i",
		"appender.FILE.layout.type":            "XMLLayout",
		"appender.FILE.policies.type":          "Policies",
		"appender.FILE.policies.size.type":     "SizeBasedTriggeringPolicy",
		"appender.FILE.policies.size.size":     fmt.Sprintf("%dMB", c.MaxFileSizeMiB),
		"appender.FILE.strategy.type":          "DefaultRolloverStrategy",
		"appender.FILE.strategy.max":           fmt.Sprintf("%d", c.ArchivedFiles),
		"appender.FILE.filter.threshold.type":  "ThresholdFilter",
		"appender.FILE.filter.threshold.level": c.FileLevel,

		"rootLogger.level":                   c.RootLevel,
		"rootLogger.appenderRefs":            "CONSOLE, FILE",
		"rootLogger.appenderRef.CONSOLE.ref": "CONSOLE",
		"rootLogger.appenderRef.FILE.ref":    "FILE",
	}

	if len(c.Loggers) > 0 {
		names := make([]string, 0, len(c.Loggers))
		for name := range c.Loggers {
			names = append(names, name)
		}
		sort.Strings(names)

		ids := make([]string, 0, len(names))
		for _, name := range names {
			id := loggerID(name)
			ids = append(ids, id)
			p["logger."+id+".name"] = name
			p["logger."+id+".level"] = c.Loggers[name]
		}
		p["loggers"] = strings.Join(ids, ", ")
	}
	return p
}

// loggerID turns a logger name into a property identifier.
func loggerID(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

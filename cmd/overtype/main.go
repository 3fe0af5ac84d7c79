// Package main runs the overtype text delivery tool.
package main

import "flag"

// main is the entrypoint for overtype.
func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "Read the text to deliver from this file")
	flag.StringVar(&opts.text, "text", "", "Text to deliver when -file is not set")
	flag.Float64Var(&opts.speed, "speed", 0, "Characters per second (0 uses preset or DEFAULT_SPEED)")
	flag.Float64Var(&opts.mistake, "mistake", -1, "Mistake percent 0-100 (-1 uses preset or DEFAULT_MISTAKE)")
	flag.StringVar(&opts.preset, "preset", "", "Named preset from the presets file")
	flag.BoolVar(&opts.listPresets, "presets", false, "List the presets file and exit")
	flag.StringVar(&opts.savePreset, "save-preset", "", "Store the resolved speed and mistake under this name and exit")
	flag.BoolVar(&opts.keep, "keep", false, "Keep reading commands after the run ends")
	flag.BoolVar(&opts.debug, "debug", false, "Enable verbose debug logging")
	flag.Parse()

	if err := run(opts); err != nil {
		logFatal(err)
	}
}

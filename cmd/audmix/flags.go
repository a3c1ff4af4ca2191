// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"

	"github.com/spf13/pflag"
)

// bind ties a flag to a configuration key so that an explicitly set flag
// overrides file and environment values.
func bind(f *pflag.Flag, key string) error {
	return settings.BindPFlag(key, f)
}

// playbackFlags registers the effect and emitter flags shared by play and
// render.
func playbackFlags(fs *pflag.FlagSet) {
	fs.Float64("volume", 1, "emitter volume")
	fs.Float64("balance", 0, "stereo balance in [-1, 1]")
	fs.Bool("loop", false, "loop every file")
	fs.Float64("pitch", 1, "pitch factor (1 = unchanged)")
	fs.Float64("tremolo", 0, "tremolo frequency in Hz (0 = off)")
	fs.Float64("echo-delay", 0, "echo delay in seconds")
	fs.Float64("echo-decay", 0.5, "echo decay factor")
	fs.Int("echo-count", 0, "number of echo repeats (0 = off)")
}

// bindPlaybackFlags runs before the command executes; play and render
// share the keys, so only the running command may hold the binding.
func bindPlaybackFlags(fs *pflag.FlagSet) error {
	return errors.Join(
		bind(fs.Lookup("volume"), "playback.volume"),
		bind(fs.Lookup("balance"), "playback.balance"),
		bind(fs.Lookup("loop"), "playback.loop"),
		bind(fs.Lookup("pitch"), "playback.pitch"),
		bind(fs.Lookup("tremolo"), "playback.tremolo"),
		bind(fs.Lookup("echo-delay"), "playback.echo_delay"),
		bind(fs.Lookup("echo-decay"), "playback.echo_decay"),
		bind(fs.Lookup("echo-count"), "playback.echo_count"),
	)
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/ledtx/easing"
)

var (
	keyframeAt     time.Duration
	keyframeEasing string
)

var keyframeCmd = &cobra.Command{
	Use:   "keyframe",
	Short: "Edit property keyframes of the profile",
}

var keyframeSetCmd = &cobra.Command{
	Use:   "set <layer> <property> <value>",
	Short: "Set a property value, as a keyframe when --at is given",
	Example: `  ledtx keyframe set background speed 120 --at 5s --easing InOutCubic
  ledtx keyframe set sparkle colour "'#ff8000'"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var at *time.Duration
		if cmd.Flags().Changed("at") {
			at = &keyframeAt
		}
		return setKeyframe(args[0], args[1], args[2], at, keyframeEasing)
	},
}

func init() {
	keyframeSetCmd.Flags().DurationVar(&keyframeAt, "at", 0, "timeline position of the keyframe")
	keyframeSetCmd.Flags().StringVar(&keyframeEasing, "easing", "", "easing towards the next keyframe")
	keyframeCmd.AddCommand(keyframeSetCmd)
	rootCmd.AddCommand(keyframeCmd)
}

func setKeyframe(layerName, path, value string, at *time.Duration, easingName string) error {
	var fn easing.Function
	if easingName != "" {
		if at == nil {
			return errors.New("--easing needs --at")
		}
		var err error
		if fn, err = easing.Parse(easingName); err != nil {
			return err
		}
	}

	w, err := openWorkspace()
	if err != nil {
		return err
	}
	defer w.profile.Dispose()

	layer, ok := w.profile.Layer(layerName)
	if !ok {
		return fmt.Errorf("profile %q has no layer %q", w.profile.Name(), layerName)
	}
	p, ok := layer.Properties().Lookup(path)
	if !ok {
		return fmt.Errorf("layer %q has no property %q", layerName, path)
	}

	if at != nil {
		if err := p.SetKeyframesEnabled(true); err != nil {
			return err
		}
	}
	if err := p.SetCurrentValueFromString(value, at); err != nil {
		return err
	}
	if easingName != "" {
		ok, err := p.SetKeyframeEasingAt(*at, fn)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no keyframe at %s", *at)
		}
	}
	return w.save()
}

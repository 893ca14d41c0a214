// Package config loads plot layouts from TOML files and builds the
// corresponding frames and joint views. The schema is closed: keys
// the schema does not define are rejected rather than ignored, so
// typos fail loudly at load time.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/joint"
	"github.com/lociview/lociview/pkg/track"
)

// Config is the root of a plot layout file. A file describes either a
// single frame (frame + track tables) or a joint view (joint table),
// or both.
type Config struct {
	Frame  FrameConfig   `toml:"frame"`
	Tracks []TrackConfig `toml:"track"`
	Joint  *JointConfig  `toml:"joint"`
}

// FrameConfig adjusts frame geometry.
type FrameConfig struct {
	Width float64 `toml:"width"`
}

// TrackConfig describes one track. Type selects the constructor; the
// remaining fields map onto that type's properties, with zero values
// meaning "use the default".
type TrackConfig struct {
	Type        string  `toml:"type"`
	File        string  `toml:"file"`
	Name        string  `toml:"name"`
	Title       string  `toml:"title"`
	Height      float64 `toml:"height"`
	Color       string  `toml:"color"`
	BorderColor string  `toml:"border_color"`
	Fontsize    float64 `toml:"fontsize"`
	Labels      string  `toml:"labels"`
	Display     string  `toml:"display"`
	Style       string  `toml:"style"`
	Orientation string  `toml:"orientation"`
	MinValue    string  `toml:"min_value"`
	MaxValue    string  `toml:"max_value"`
	Bins        int     `toml:"bins"`
	Cmap        string  `toml:"cmap"`
	DepthRatio  string  `toml:"depth_ratio"`
	Where       string  `toml:"where"`
}

// JointConfig describes a joint view: a center matrix file plus
// per-side track lists.
type JointConfig struct {
	Center      string        `toml:"center"`
	CenterWidth float64       `toml:"center_width"`
	TRBL        string        `toml:"trbl"`
	Space       float64       `toml:"space"`
	PaddingLeft float64       `toml:"padding_left"`
	Top         []TrackConfig `toml:"top"`
	Right       []TrackConfig `toml:"right"`
	Bottom      []TrackConfig `toml:"bottom"`
	Left        []TrackConfig `toml:"left"`
}

// Load reads and validates a layout file.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing %s", path)
	}
	if err := checkClosed(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse reads a layout from TOML source text.
func Parse(data string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config")
	}
	if err := checkClosed(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func checkClosed(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return errors.New(errors.ErrCodeInvalidConfig,
		"unknown keys: %s", strings.Join(keys, ", "))
}

// trackTypes enumerates every accepted track type. Factory entries
// (Arcs, HiCMat) dispatch on the file extension.
var trackTypes = []string{
	"ABCompartment", "Arcs", "BEDPE", "Bed", "BedGraph", "BigWig",
	"Cool", "DotHiC", "HiCMat", "Pairs", "Spacer", "TADs", "XAxis",
}

func validTrackType(typ string) bool {
	for _, t := range trackTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// Validate checks every track entry against the accepted type list
// and required fields.
func (c *Config) Validate() error {
	for i, tc := range c.Tracks {
		if err := tc.validate(fmt.Sprintf("track[%d]", i)); err != nil {
			return err
		}
	}
	if c.Joint != nil {
		if c.Joint.Center == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "joint.center is required")
		}
		for side, list := range map[string][]TrackConfig{
			"top": c.Joint.Top, "right": c.Joint.Right,
			"bottom": c.Joint.Bottom, "left": c.Joint.Left,
		} {
			for i, tc := range list {
				if err := tc.validate(fmt.Sprintf("joint.%s[%d]", side, i)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (tc TrackConfig) validate(where string) error {
	if tc.Type == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: type is required", where)
	}
	if !validTrackType(tc.Type) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"%s: unknown track type %q, accepted: %s",
			where, tc.Type, strings.Join(trackTypes, ", "))
	}
	switch tc.Type {
	case "Spacer", "XAxis":
	default:
		if tc.File == "" {
			return errors.New(errors.ErrCodeInvalidConfig,
				"%s: %s requires a file", where, tc.Type)
		}
	}
	return nil
}

// options translates the non-zero fields into track options.
func (tc TrackConfig) options(extra ...track.Option) []track.Option {
	var opts []track.Option
	set := func(key string, v any) {
		opts = append(opts, track.With(key, v))
	}
	if tc.Name != "" {
		set("name", tc.Name)
	}
	if tc.Title != "" {
		set("title", tc.Title)
	}
	if tc.Height != 0 {
		set("height", tc.Height)
	}
	if tc.Color != "" {
		set("color", tc.Color)
	}
	if tc.BorderColor != "" {
		set("border_color", tc.BorderColor)
	}
	if tc.Fontsize != 0 {
		set("fontsize", tc.Fontsize)
	}
	if tc.Labels != "" {
		set("labels", tc.Labels)
	}
	if tc.Display != "" {
		set("display", tc.Display)
	}
	if tc.Style != "" {
		set("style", tc.Style)
	}
	if tc.Orientation != "" {
		set("orientation", tc.Orientation)
	}
	if tc.MinValue != "" {
		set("min_value", tc.MinValue)
	}
	if tc.MaxValue != "" {
		set("max_value", tc.MaxValue)
	}
	if tc.Bins != 0 {
		set("bins", tc.Bins)
		set("number_of_bins", tc.Bins)
	}
	if tc.Cmap != "" {
		set("cmap", tc.Cmap)
	}
	if tc.DepthRatio != "" {
		set("depth_ratio", tc.DepthRatio)
	}
	if tc.Where != "" {
		set("where", tc.Where)
	}
	return append(opts, extra...)
}

// Build constructs the track described by tc.
func (tc TrackConfig) Build(extra ...track.Option) (*track.Track, error) {
	opts := tc.options(extra...)
	switch tc.Type {
	case "Spacer":
		return track.NewSpacer(opts...), nil
	case "XAxis":
		return track.NewXAxis(opts...), nil
	case "Bed":
		return track.NewBed(tc.File, opts...), nil
	case "TADs":
		return track.NewTADs(tc.File, opts...), nil
	case "BigWig":
		return track.NewBigWig(tc.File, opts...), nil
	case "BedGraph":
		return track.NewBedGraph(tc.File, opts...), nil
	case "ABCompartment":
		return track.NewABCompartment(tc.File, opts...), nil
	case "BEDPE":
		return track.NewBEDPE(tc.File, opts...), nil
	case "Pairs":
		return track.NewPairs(tc.File, opts...), nil
	case "Arcs":
		return track.NewArcs(tc.File, opts...)
	case "Cool":
		return track.NewCool(tc.File, opts...), nil
	case "DotHiC":
		return track.NewDotHiC(tc.File, opts...), nil
	case "HiCMat":
		return track.NewHiCMat(tc.File, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown track type %q", tc.Type)
}

// BuildFrame constructs the frame described by the config's frame and
// track tables.
func (c *Config) BuildFrame(extra ...track.Option) (*track.Frame, error) {
	f := track.NewFrame()
	if c.Frame.Width != 0 {
		f.SetWidth(c.Frame.Width)
	}
	for _, tc := range c.Tracks {
		tr, err := tc.Build(extra...)
		if err != nil {
			return nil, err
		}
		f.AddTrack(tr)
	}
	return f, nil
}

func buildSide(list []TrackConfig, extra []track.Option) (*track.Frame, error) {
	if len(list) == 0 {
		return nil, nil
	}
	f := track.NewFrame()
	for _, tc := range list {
		tr, err := tc.Build(extra...)
		if err != nil {
			return nil, err
		}
		f.AddTrack(tr)
	}
	return f, nil
}

// BuildJoint constructs the joint view described by the config's
// joint table.
func (c *Config) BuildJoint(extra ...track.Option) (*joint.JointView, error) {
	if c.Joint == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no joint table in config")
	}
	jc := c.Joint

	center, err := track.NewHiCMat(jc.Center, extra...)
	if err != nil {
		return nil, err
	}

	var opts []joint.Option
	if jc.CenterWidth != 0 {
		opts = append(opts, joint.WithCenterWidth(jc.CenterWidth))
	}
	if jc.TRBL != "" {
		opts = append(opts, joint.WithTRBL(jc.TRBL))
	}
	if jc.Space != 0 {
		opts = append(opts, joint.WithSpace(jc.Space))
	}
	if jc.PaddingLeft != 0 {
		opts = append(opts, joint.WithPaddingLeft(jc.PaddingLeft))
	}

	sides := []struct {
		list []TrackConfig
		opt  func(any) joint.Option
	}{
		{jc.Top, joint.WithTop},
		{jc.Right, joint.WithRight},
		{jc.Bottom, joint.WithBottom},
		{jc.Left, joint.WithLeft},
	}
	for _, s := range sides {
		f, err := buildSide(s.list, extra)
		if err != nil {
			return nil, err
		}
		if f != nil {
			opts = append(opts, s.opt(f))
		}
	}

	return joint.New(center, opts...)
}

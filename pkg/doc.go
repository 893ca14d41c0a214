// Package pkg provides the core libraries for lociview genome
// visualization.
//
// # Overview
//
// Lociview composes genome tracks (intervals, signals, arcs, contact
// matrices) into vertically stacked frames and joint contact views,
// rendered as SVG. The pkg directory is organized into five main
// areas:
//
//  1. [track] - The track registry: property bags, frames, and
//     composition operators
//  2. [datasource] - File readers and interval indexing for BED,
//     bedGraph, BEDPE, and pairs data
//  3. [render] - SVG rendering: track renderers, colormaps, and
//     figure composition
//  4. [joint] - Layout arithmetic placing peripheral frames around a
//     center contact plot
//  5. [pipeline] - Orchestration (load → build → plot → convert) with
//     artifact caching
//
// # Architecture
//
// The typical data flow:
//
//	TOML layout file
//	         ↓
//	config (closed-schema validation)
//	         ↓
//	track.Frame / joint.JointView
//	         ↓
//	render (per-track SVG fragments → composed figure)
//	         ↓
//	svg / png / pdf artifacts
//
// Tracks pair a property bag with a renderer and a data source, so
// callers can substitute in-memory sources for formats whose decoders
// live in external tooling.
package pkg

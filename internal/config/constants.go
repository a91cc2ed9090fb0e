package config

import "time"

// Base application details
const AppName = "midiroll"
const Version = "0.1.0"
const ConfigDirName = "midiroll"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "midiroll.log"

// UI Layout
const StatusBarHeight = 1
const RulerHeight = 1
const KeyColumnWidth = 4 // piano key labels at the left edge

// Status Bar
const MessageTimeout = 4 * time.Second

// Document defaults
const TicksPerQuarter = 960
const DefaultBPM = 120.0

// Editing defaults; these can be moved to NewDefaultConfig(), keeping here for now
const DefaultGridDivision = 4 // grid lines per quarter note
const DefaultVelocity = 100
const DefaultNoteTicks = TicksPerQuarter / DefaultGridDivision
const DefaultEdgeMargin = 1 // cells around a note edge that count as a resize zone
const DefaultMaxUndo = 256
const SystemClipboard = true

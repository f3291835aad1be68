package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Run{},
	&Sample{},
}

// Run is one simulated throw.
type Run struct {
	ID        uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	UUID      string    `json:"uuid" gorm:"size:36;uniqueIndex:idx_run_uuid"`
	StartTime time.Time `json:"startTime" gorm:"index:idx_run_start"`

	VenueName     string     `json:"venueName" gorm:"size:127"`
	VenueLocation geom.Point `json:"venueLocation"` // EPSG:3857

	LaunchPosition geom.Point `json:"launchPosition"` // XYZ, meters
	Speed          float64    `json:"speed"`          // m/s
	Teta0          float64    `json:"teta0"`
	Phi0           float64    `json:"phi0"`
	AngleUnit      string     `json:"angleUnit" gorm:"size:16"`

	TargetPosition geom.Point `json:"targetPosition"` // XYZ, meters
	CaptureRadius  float64    `json:"captureRadius"`

	Seconds float64 `json:"seconds"`
	Steps   int     `json:"steps"`
	Gravity float64 `json:"gravity"`

	Entered    bool            `json:"entered" gorm:"index:idx_run_entered"`
	NumSamples int             `json:"numSamples"`
	PathLength float64         `json:"pathLength"` // meters
	MotionPath geom.LineString `json:"-"`          // one vertex per retained sample
	Inputs     datatypes.JSON  `json:"inputs"`     // JSON on SQLite, JSONB on Postgres
	SVGPath    string          `json:"svgPath" gorm:"size:255"`

	Samples []Sample `json:"samples" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Run) TableName() string {
	return "runs"
}

// Sample is one retained instant of a run.
type Sample struct {
	ID       uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	RunID    uint       `json:"runId" gorm:"index:idx_sample_run_id"`
	Seq      int        `json:"seq"` // position in the trajectory
	T        float64    `json:"t"`   // seconds since launch
	Position geom.Point `json:"position"`
	Entered  bool       `json:"entered" gorm:"default:false"`
}

func (*Sample) TableName() string {
	return "samples"
}

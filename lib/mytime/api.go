package mytime

import "time"

var (
	// ExampleTime is a Monday
	ExampleTime time.Time
	// ExampleTuesday is the day after ExampleTime
	ExampleTuesday time.Time
)

func init() {
	ExampleTime, _ = time.Parse("2006-01-02T15:04:05Z", "2023-02-27T23:58:59Z")
	ExampleTuesday = ExampleTime.Add(24 * time.Hour)
}

//go:generate mockgen -source=api.go -package mytime -destination nower_mock.go Nower
type Nower interface {
	Now() time.Time
}

type RealNower struct{}

func (n RealNower) Now() time.Time {
	return time.Now()
}

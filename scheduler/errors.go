package scheduler

import "errors"

// ErrInvalidConfig indicates a Config value spec §7 classifies as a fatal
// configuration error: a non-positive MaxSimTime or PriorityWeight.
var ErrInvalidConfig = errors.New("scheduler: invalid configuration")

package scheduler

import "errors"

// ErrBusy is returned by RunNow while another run is in progress.
var ErrBusy = errors.New("recalculation already running")

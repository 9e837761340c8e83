package notificationcenter

import "errors"

var ErrInvalidRequestData = errors.New("invalid notification request data")

package hardware

import "context"

// System defines the public contract for the controller.
type System interface {
	Handler() *Handler

	Find(ctx context.Context) (*Hardware, error)
	SetRemoteControl(ctx context.Context, cmd RemoteCommand) (*Hardware, error)
	RecordReadings(ctx context.Context, cmd ReadingsCommand) (*Hardware, error)
}

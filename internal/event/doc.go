// Package event provides a pub-sub event bus for decoupled communication
// between loading coordinators, screens, and error reporting.
//
// # Main Types
//
//   - [Event]: interface providing EventType() and Timestamp()
//   - [Bus]: synchronous, thread-safe dispatcher
//   - [Handler]: func(Event)
//
// # Event Catalog
//
//   - [LoadingShownEvent] (loading.shown): a busy signal turned on
//   - [LoadingHiddenEvent] (loading.hidden): a busy signal turned off
//   - [OperationFailedEvent] (operation.failed): a screen reports a failure
//   - [ConfigReloadedEvent] (config.reloaded): configuration was hot-reloaded
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. Handlers are called synchronously on the
// publisher's goroutine, outside the bus lock, and a panicking handler does
// not prevent other handlers from being called.
//
// # Basic Usage
//
//	bus := event.NewBus(logger)
//
//	bus.Subscribe(event.TypeOperationFailed, func(e event.Event) {
//	    failed := e.(event.OperationFailedEvent)
//	    report(failed.Label, failed.Err)
//	})
//
//	bus.Publish(event.NewOperationFailedEvent("settings", "save", err))
package event

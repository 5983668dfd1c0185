// Package mtbridge is a message-template logger with a bridge to a minimal
// logging facade.
//
// The root package provides the concrete core.Logger: templates such as
// "User {UserId} logged in" are parsed once, arguments are captured into
// structured property values, and events flow through enrichers, filters and
// sinks.
//
//	log := mtbridge.New(
//		mtbridge.WithConsole(),
//		mtbridge.WithMinimumLevel(core.DebugLevel),
//	)
//	defer log.Close()
//
//	log.Information("Order {OrderId} placed by {@Customer}", 42, customer)
//
// Library code that only depends on the facade package can log through the
// same pipeline:
//
//	lib := log.AsFacade().ForContext("Billing")
//	lib.Log(facade.NewLogEvent(facade.Info, "Charged {Amount}", 9.99))
//
// In the other direction, bridge.NewReverseSink forwards events from this
// logger to any facade.Logger.
package mtbridge

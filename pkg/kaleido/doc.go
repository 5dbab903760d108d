// Package kaleido provides the public API for embedding the go-kaleido
// drawing surface. It wires configuration, the symmetric stroke renderer,
// the Ebiten window and the headless script player together with lifecycle
// management, logging and metrics.
//
// # Basic Usage
//
// Create an instance from a configuration file and run it on the main
// goroutine. Run blocks until the window is closed or ctx is cancelled:
//
//	app, err := kaleido.New("/path/to/kaleido.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := app.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration Sources
//
//   - Disk file: [New] (supports hot reload with Options.WatchConfig)
//   - Embedded FS: [NewFromFS]
//   - io.Reader: [NewFromReader]
//   - Built-in defaults: [NewDefault]
//
// # Headless Drawing
//
// [App.Replay] draws a gesture script onto an off-screen canvas and writes
// the PNG exports the script asks for. It does not need a window:
//
//	app, _ := kaleido.NewDefault(&kaleido.Options{Headless: true})
//	err := app.Replay(ctx, strings.NewReader("resize 400 400\ndown 250 200\nmove 300 200\nexport"))
//
// # Error Handling
//
// Runtime errors are reported through [ErrorHandler] as *[CategorizedError]
// values. The handler is called asynchronously; do not block in it.
package kaleido

package throttle_test

import (
	"fmt"
	"time"

	"github.com/vnykmshr/gopace/pkg/ratelimit/throttle"
)

// Example demonstrates the timestamp strategy: the qualifying call runs
// the operation inline and calls inside the window are dropped.
func Example() {
	refresh := throttle.New(func(args ...interface{}) {
		fmt.Printf("refreshed %v\n", args[0])
	}, time.Second, throttle.Timestamp)

	refresh.Call("view A") // fires inline
	refresh.Call("view B") // dropped, window still open
	refresh.Call("view C") // dropped

	// Output: refreshed view A
}

// Example_timer demonstrates the timer strategy: one deferred invocation
// per window, carrying the first call's arguments.
func Example_timer() {
	done := make(chan struct{})

	resize := throttle.New(func(args ...interface{}) {
		fmt.Printf("layout for %v\n", args[0])
		close(done)
	}, 50*time.Millisecond, throttle.Timer)

	resize.Call("800x600")  // opens the window
	resize.Call("801x600")  // dropped
	resize.Call("802x600")  // dropped

	<-done

	// Output: layout for 800x600
}

// Example_wrap demonstrates the closure form for drop-in use.
func Example_wrap() {
	ping := throttle.Wrap(func(args ...interface{}) {
		fmt.Println("ping")
	}, time.Minute, throttle.Timestamp)

	ping()
	ping()
	ping()

	// Output: ping
}

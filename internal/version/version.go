package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X acbuy.com/showcase/internal/version.Version=1.2.3"
var Version = "1.0"

// Banner prints identifying information about the server.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " ACBUY. All rights reserved."

	return fmt.Sprintf("%s\nShowcase (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=Showcase
	const s = `
  ____  _
 / ___|| |__   _____      _____ __ _ ___  ___
 \___ \| '_ \ / _ \ \ /\ / / __/ _' / __|/ _ \
  ___) | | | | (_) \ V  V / (_| (_| \__ \  __/
 |____/|_| |_|\___/ \_/\_/ \___\__,_|___/\___|
`
	return s
}

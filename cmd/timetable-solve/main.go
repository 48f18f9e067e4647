// Command timetable-solve loads a JSON course-timetabling problem, runs the
// solver, and prints a room-by-time report.
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(log.Ltime)
	if err := Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

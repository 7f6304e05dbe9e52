// Copyright 2026 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// sensord serves the chip tree over HTTP.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/soumya92/sensors"
	"github.com/soumya92/sensors/chipname"
	"github.com/soumya92/sensors/format"
	"github.com/soumya92/sensors/report"
)

var (
	listen     = flag.String("listen", "127.0.0.1:8086", "address to serve on")
	configFile = flag.String("c", "", "configuration file (default: system configuration)")
)

func newApp(r *sensors.Registry, middleware ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		AppName:      "sensord",
	})
	for _, m := range middleware {
		app.Use(m)
	}
	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api.Get("/chips", func(c *fiber.Ctx) error {
		return sendChips(c, r, chipname.Any())
	})
	api.Get("/chips/:name", func(c *fiber.Ctx) error {
		pattern, err := chipname.Parse(c.Params("name"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return sendChips(c, r, pattern)
	})
	return app
}

func sendChips(c *fiber.Ctx, r *sensors.Registry, pattern chipname.ChipName) error {
	chips, err := report.Collect(r, format.Formatter{}, pattern)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(chips) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no chips match " + pattern.String()})
	}
	return c.JSON(chips)
}

func main() {
	flag.Parse()
	var opts []sensors.Option
	if *configFile != "" {
		opts = append(opts, sensors.WithConfigFiles(*configFile))
	}
	r, err := sensors.Init(opts...)
	if err != nil {
		log.Fatal(err)
	}
	app := newApp(r, logger.New())

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("serving on %s", *listen)
	if err := app.Listen(*listen); err != nil {
		log.Print(err)
	}
	release(r)
}

func release(r *sensors.Registry) {
	if err := r.Shutdown(); err != nil {
		log.Printf("releasing sensors: %v", err)
	}
}

/*
Package olstudio is a session-scoped analysis pipeline for tabular data:
upload a dataset, resolve its data-quality issues, and run repeatable
Ordinary Least Squares regression studies against it.

The pipeline is an in-process library invoked synchronously by a caller
that owns all presentation concerns (UI, CLI, notebook). It exposes the
validate, clean, describe, plot data and fit operations plus session
lifecycle, all addressed by an opaque session token.

# Concept

A session binds one immutable raw dataset to at most one working dataset.
The validator reports missing values, numeric-coercion failures and
probable categorical columns; the caller answers with one cleaning decision
per flagged column; the cleaner produces the working dataset every later
operation runs against. Regression fits accumulate in a session-scoped list
of immutable models, each carrying its own diagnostics: a fit that detects
multicollinearity or heteroscedasticity returns a valid model with
warnings, while an uninvertible design matrix fails hard.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/olstudio/olstudio"
		"github.com/olstudio/olstudio/pkg/domain"
	)

	func main() {
		ctx := context.Background()
		studio := olstudio.New()

		ds, err := domain.FromRecords([]string{"x", "y"}, records)
		if err != nil {
			log.Fatal(err)
		}

		up, err := studio.Upload(ctx, ds)
		if err != nil {
			log.Fatal(err)
		}
		defer studio.EndSession(ctx, up.SessionID)

		if _, err := studio.Clean(ctx, up.SessionID, domain.Decisions{
			"x": domain.ImputeMean,
		}); err != nil {
			log.Fatal(err)
		}

		model, err := studio.Fit(ctx, up.SessionID, "y", []string{"x"}, "baseline")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(model.RSquared, model.Warnings)
	}

Sessions live in memory only and are destroyed on EndSession. Independent
sessions share no mutable state and may run fully in parallel; calls
against one session are expected to be serialized by the caller, though
the session manager defensively locks per session ID.
*/
package olstudio

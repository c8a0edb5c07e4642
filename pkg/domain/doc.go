/*
Package domain contains the core data model for the analysis pipeline.

It defines the fundamental entities shared by every engine: the tri-state
Value, the Dataset, cleaning decisions, validation reports, descriptive
statistics, distribution summaries and fitted regression models. This
package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Value: a single cell, exactly one of {number, text, missing}.
  - Dataset: an ordered, column-unique table of Values.
  - ValidationReport: missing counts, type mismatches, categorical flags.
  - RegressionModel: an immutable fitted OLS model with diagnostics.
*/
package domain

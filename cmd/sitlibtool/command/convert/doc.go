// Copyright (c) Microsoft Corporation 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package convert provides functionality to convert legacy mapping cache files
// to the canonical mapping library format.
package convert

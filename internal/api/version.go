// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// Version is reported in the User-Agent of every request.
const Version = "0.1.0"

// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package browse

type ListRequest struct {
	// partial or full XNAT URIs, listed in order
	URIs []string
	// when set, only these attributes are kept in each row
	Attributes []string
	// query filters, see config.ExpandFilter
	Filters []string
}

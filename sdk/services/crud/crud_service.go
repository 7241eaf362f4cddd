// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package crud

import (
	"github.com/xnat-tools/xnatio/sdk/config"
)

type CrudService struct {
	http config.CoreHTTP
}

func NewCrudService(http config.CoreHTTP) *CrudService {
	return &CrudService{http: http}
}

/*
 * Copyright (c) 2025, ComplyArk. (https://www.complyark.com).
 *
 * ComplyArk licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/constants"
	"github.com/complyark/dpdpa-portal/internal/system/error/apierror"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
)

// SendServiceError writes a ServiceError to the response with the
// appropriate HTTP status code.
func SendServiceError(c *gin.Context, svcErr *serviceerror.ServiceError) {
	c.JSON(statusForServiceError(svcErr), apierror.NewErrorResponse(svcErr.Code, svcErr.ErrorDescription))
}

func statusForServiceError(svcErr *serviceerror.ServiceError) int {
	if svcErr.Type == serviceerror.ServerErrorType {
		return http.StatusInternalServerError
	}
	switch svcErr.Code {
	case codes.ResourceNotFound, codes.RequestNotFound, codes.GrievanceNotFound,
		codes.StatusNotFound, codes.TemplateNotFound:
		return http.StatusNotFound
	case codes.Forbidden:
		return http.StatusForbidden
	case codes.ConflictError, codes.StatusNameTaken, codes.StatusInUse:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// SendBadRequest writes a 400 with the given description.
func SendBadRequest(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, apierror.NewErrorResponse(codes.InvalidRequest, description))
}

// ParsePagination extracts limit and offset query parameters, applying
// defaults and clamping the limit to the allowed maximum.
func ParsePagination(c *gin.Context) (limit, offset int) {
	limit = constants.DefaultPageSize
	offset = 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}

// ParseIDParam parses a positive numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

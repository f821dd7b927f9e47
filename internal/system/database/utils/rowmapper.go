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
	"strconv"
	"time"
)

// Row value coercion helpers. Generic column maps coming back from the
// driver carry int64, string, or time.Time depending on column type and
// driver settings; store mappers normalize through these.

// ToInt64 coerces a row value to int64, returning 0 when absent.
func ToInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		parsed, _ := strconv.ParseInt(n, 10, 64)
		return parsed
	default:
		return 0
	}
}

// ToNullableInt64 coerces a row value to *int64, returning nil for NULL.
func ToNullableInt64(v interface{}) *int64 {
	if v == nil {
		return nil
	}
	n := ToInt64(v)
	return &n
}

// ToString coerces a row value to string, returning "" when absent.
func ToString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// ToNullableString coerces a row value to *string, returning nil for NULL.
func ToNullableString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := ToString(v)
	return &s
}

// ToBool coerces a row value to bool. MySQL returns TINYINT columns as
// integers.
func ToBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	default:
		return ToInt64(v) != 0
	}
}

// ToNullableBool coerces a row value to *bool, returning nil for NULL.
func ToNullableBool(v interface{}) *bool {
	if v == nil {
		return nil
	}
	b := ToBool(v)
	return &b
}

// ToTime coerces a row value to time.Time. With parseTime enabled the
// driver returns time.Time directly; string fallback covers raw scans.
func ToTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

// ToNullableTime coerces a row value to *time.Time, returning nil for NULL.
func ToNullableTime(v interface{}) *time.Time {
	if v == nil {
		return nil
	}
	t := ToTime(v)
	if t.IsZero() {
		return nil
	}
	return &t
}

/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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
package service

import "github.com/wso2/resident-reconciliation-service/internal/system/constants"

// PackageSizeForRating maps an order rating to its package size label. Missing and unknown
// ratings get the rating 1 size.
func PackageSizeForRating(rating *int, sizes map[int]string) string {

	if rating != nil {
		if size, ok := sizes[*rating]; ok {
			return size
		}
	}
	if size, ok := sizes[1]; ok {
		return size
	}
	return constants.DefaultPackageSizes[1]
}

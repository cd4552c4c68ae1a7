/*
 * Smart-ID client for Go
 * Copyright (C) 2021. The smartid-go-client authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package logging

import "github.com/sirupsen/logrus"

// Log returns the logger entry used by all packages of this module.
func Log() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "smartid")
}

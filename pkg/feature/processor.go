/*
 *     Copyright 2026 The Pricer Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package feature

import "strings"

// ProcessorType is the simplified processor family of a phone.
type ProcessorType string

const (
	ProcessorSnapdragon ProcessorType = "snapdragon"
	ProcessorMediatek   ProcessorType = "mediatek"
	ProcessorExynos     ProcessorType = "exynos"
	ProcessorApple      ProcessorType = "apple"
	ProcessorUnisoc     ProcessorType = "unisoc"
	ProcessorOther      ProcessorType = "other"
)

// processorKeywords is ordered, the first family with a matching keyword wins.
var processorKeywords = []struct {
	processorType ProcessorType
	keywords      []string
}{
	{processorType: ProcessorSnapdragon, keywords: []string{"snapdragon"}},
	{processorType: ProcessorMediatek, keywords: []string{"dimensity", "mediatek", "helio"}},
	{processorType: ProcessorExynos, keywords: []string{"exynos"}},
	{processorType: ProcessorApple, keywords: []string{"apple", "bionic"}},
	{processorType: ProcessorUnisoc, keywords: []string{"unisoc"}},
}

// ProcessorTypes returns every processor family, including other.
func ProcessorTypes() []ProcessorType {
	return []ProcessorType{ProcessorApple, ProcessorExynos, ProcessorMediatek, ProcessorOther, ProcessorSnapdragon, ProcessorUnisoc}
}

// SimplifyProcessor maps a free-text processor name onto its family.
func SimplifyProcessor(raw string) ProcessorType {
	raw = strings.ToLower(raw)
	for _, p := range processorKeywords {
		for _, keyword := range p.keywords {
			if strings.Contains(raw, keyword) {
				return p.processorType
			}
		}
	}

	return ProcessorOther
}

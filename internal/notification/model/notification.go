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

// Package model defines the data structures for email notifications.
package model

// Template names the dispatcher resolves against the template store.
const (
	TemplateCreation     = "Request Creation Notification"
	TemplateStatusChange = "Request Status Update Notification"
	TemplateClosure      = "Request Closure Notification"
	TemplateAssignment   = "Request Assignment Notification"
	TemplateEscalation   = "Request Escalation Notification"
)

// EmailTemplate is a stored notification template. The body is HTML with
// {placeholder} tokens; the plain-text part is derived by stripping markup.
type EmailTemplate struct {
	TemplateID   int64  `json:"templateId"`
	TemplateName string `json:"templateName"`
	Subject      string `json:"subject"`
	BodyHTML     string `json:"bodyHtml"`
}

// Message is a rendered email ready for transport.
type Message struct {
	To       string
	CC       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Notice describes a lifecycle event to notify about. Data supplies the
// placeholder values for the chosen template.
type Notice struct {
	TemplateName string
	Recipient    string
	CC           []string
	Data         map[string]string
}

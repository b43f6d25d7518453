/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package rfdc

// Disabled is the payload the peer sends for inactive tiles and blocks
const Disabled = "(disabled)"

const (
	PLLTypeLMK = "lmk"
	PLLTypeLMX = "lmx"
)

// ClkFileExt is the extension of TICS register dump files
const ClkFileExt = ".txt"

// DTOFile is the remote name the board server expects the overlay under
const DTOFile = "tcpborphserver.dtbo"

const (
	NyquistZone1 = 1
	NyquistZone2 = 2
)

const (
	DataTypeReal    = 0
	DataTypeComplex = 1
)

const (
	ClkSrcExternal = 0
	ClkSrcInternal = 1
)

const (
	PLLUnlocked = 1
	PLLLocked   = 2
)

const (
	CalMode1 = 1
	CalMode2 = 2
)

// Background calibration blocks
const (
	CalBlockOCB1 = 0
	CalBlockOCB2 = 1
	CalBlockGCB  = 2
	CalBlockTSCB = 3
)

const (
	CalUnfreeze = 0
	CalFreeze   = 1
)

// Update events
const (
	EventMixer       = 1
	EventCoarseDelay = 2
	EventQMC         = 4
)

// Event sources
const (
	EventSourceImmediate = 0
	EventSourceSlice     = 1
	EventSourceTile      = 2
	EventSourceSysref    = 3
	EventSourceMarker    = 4
	EventSourcePL        = 5
)

const (
	InvSincFIRDisabled = 0
	InvSincFIRNyquist1 = 1
	InvSincFIRNyquist2 = 2
)

const (
	IMRLowpass  = 0
	IMRHighpass = 1
)

// Request names of operations outside the field catalog
const (
	RequestStatus            = "rfdc-status"
	RequestInit              = "rfdc-init"
	RequestProgPLL           = "rfdc-progpll"
	RequestRunMTS            = "rfdc-run-mts"
	RequestUpdateNCOMTS      = "rfdc-update-nco-mts"
	RequestReportMixer       = "rfdc-report-mixer"
	RequestUpdateEvent       = "rfdc-update-event"
	RequestDisableUserCoeffs = "rfdc-disable-user-coeffs"
	RequestDTO               = "dto"
	RequestListFiles         = "listbof"
	RequestDeleteFile        = "delbof"
	RequestUploadFile        = "upload"
)

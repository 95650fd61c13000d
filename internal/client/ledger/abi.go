package ledger

// donationLogABI covers the contract surface the client uses. Ciphertext
// handles travel as bytes32 on the wire.
const donationLogABI = `[
  {"type":"function","name":"getUserDonationCount","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getUserDonationIdAt","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getRecordMetadata","stateMutability":"view","inputs":[{"name":"recordId","type":"uint256"}],"outputs":[{"name":"submitter","type":"address"},{"name":"blockNumber","type":"uint256"}]},
  {"type":"function","name":"getEncryptedAmount","stateMutability":"view","inputs":[{"name":"recordId","type":"uint256"}],"outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"getEncryptedTimestamp","stateMutability":"view","inputs":[{"name":"recordId","type":"uint256"}],"outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"nextRecordId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getUserDonationLevel","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"submitDonation","stateMutability":"nonpayable","inputs":[{"name":"amountHandle","type":"bytes32"},{"name":"timestampHandle","type":"bytes32"},{"name":"inputProof","type":"bytes"}],"outputs":[]}
]`
